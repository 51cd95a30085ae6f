// Package hclconfig loads project definitions written in HCL into the
// format-agnostic config.Model.
//
// A file may hold any number of project blocks:
//
//	project ":app" {
//	  build_types  = ["debug", "release"]
//	  package_name = "com.example.app"
//
//	  variant "freeDebug" {
//	    srcs         = ["src/main/java", "src/free/java"]
//	    build_config = { DEBUG = "true" }
//	    deps         = [project(":lib"), artifact("androidx.core:core:1.12.0")]
//	  }
//	}
//
// Inside deps, plain strings starting with ':' are project dependencies and
// any other string is an external artifact coordinate.
package hclconfig
