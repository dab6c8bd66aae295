// Package config loads squirrel.json, the project configuration.
//
// # Configuration File Structure
//
//	{
//	  "factory": {
//	    "idPrefix": "atome",
//	    "rootSelector": "#view"
//	  },
//	  "components": {
//	    "dir": "pkg/widgets",
//	    "extensions": [".go"],
//	    "exclude": ["*_test.go", "*_gen.go", "doc.go"],
//	    "suffix": "_builder",
//	    "declarationFile": "pkg/widgets/available_gen.go",
//	    "declarationVar": "Available",
//	    "s3": {"bucket": "", "prefix": "", "region": "", "endpoint": ""}
//	  },
//	  "preview": {"host": "localhost", "port": 7070},
//	  "templates": "templates.yaml",
//	  "drag": {"cursor": "grab"},
//	  "log": {"level": "info"}
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	names, err := component.Scan(ctx, cfg.Components.Source(), cfg.Components.ScanOptions())
package config
