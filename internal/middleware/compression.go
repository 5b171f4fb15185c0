// Package middleware provides HTTP middleware components for the packaging service.
package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// uncompressedPaths are served as is; promhttp negotiates its own encoding.
var uncompressedPaths = []string{"/metrics"}

// Compression gzips responses for clients that accept it, except for uncompressedPaths.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(uncompressedPaths))
}
