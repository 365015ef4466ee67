// Package config loads pagetree configuration.
//
// Settings live in pagetree.json at the project root. Secrets and
// deployment-specific values come from the environment, optionally seeded by
// a .env file next to pagetree.json (the same file the frontend build reads).
// Variables already set in the process environment win over .env.
//
// # Configuration File Structure
//
//	{
//	  "pages": {
//	    "dir": "src/pages",
//	    "root": "./pages/",
//	    "extension": ".vue",
//	    "home": "home",
//	    "locale": "ru"
//	  },
//	  "source": {
//	    "type": "s3",
//	    "s3": {"bucket": "widget-pages", "prefix": "pages/", "region": "eu-central-1"}
//	  },
//	  "server": {"addr": ":8080", "watch": true, "shutdownTimeout": "10s"},
//	  "auth": {"required": true, "param": "token"},
//	  "metrics": {"enabled": true, "namespace": "pagetree"},
//	  "manifest": "routes.json"
//	}
//
// # Environment
//
//	BACKEND_API_TOKEN / VITE_BACKEND_API_TOKEN   frame credential
//	PAGETREE_ADDR                                server.addr
//	PAGETREE_PAGES_DIR                           pages.dir
//	PAGETREE_SOURCE                              source.type
//	PAGETREE_S3_BUCKET / PAGETREE_S3_PREFIX      source.s3.bucket / prefix
//	PAGETREE_S3_ENDPOINT                         source.s3.endpoint
//	AWS_REGION                                   source.s3.region
package config
