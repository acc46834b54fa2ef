// Package shared declares the collaborator contracts used by the clone and dedupe services.
package shared
