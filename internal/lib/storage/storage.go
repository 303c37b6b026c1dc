// Package storage persists uploaded document files.
//
// Local holds the raw bytes on disk under the configured upload
// directory and is the backing store for text extraction. S3 serves
// the direct-upload endpoints that hand files to an object store.
package storage
