/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package processor generates key map registration code from annotated
// OpenAPI specifications.
//
// Schemas carrying the x-couchbase-keymap vendor extension are turned
// into init-time registry.RegisterKeyMap and registry.RegisterTypeFor
// calls so that models, key templates, and query-time decoding stay in
// sync with the API definition:
//
//	components:
//	  schemas:
//	    UserProfile:
//	      type: object
//	      x-couchbase-keymap:
//	        docType: UserProfile
//	        key: "user::{UserId}"
//
// The generator is normally invoked through the keymap command.
package processor
