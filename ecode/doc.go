// Package ecode provides human-readable message helpers used to build
// error reasons across the data layer and the pagination engine.
package ecode
