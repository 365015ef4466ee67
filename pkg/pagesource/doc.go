// Package pagesource discovers page files and hands them to the route tree
// builder as routetree.PageEntry values.
//
// Sources:
//
//	Scanner    page files in an fs.FS (os.DirFS, embed.FS, fstest.MapFS)
//	S3Source   page objects under a bucket prefix
//	Static     a fixed list
//
// Every source reports raw paths in the form the builder expects
// ("./pages/jobs/list.vue") and returns them sorted, so repeated scans of the
// same content yield identical entry lists. The component of each entry is a
// *Page describing where the file came from.
package pagesource
