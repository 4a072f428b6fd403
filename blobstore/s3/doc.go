// Package s3 provides a blobstore.Store backed by Amazon S3.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("schemas/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cat := catalog.New(store, registry)
//
// WithEndpoint points the store at an S3-compatible service and switches
// to path-style addressing. Blobs are read with ranged GETs and written
// through the SDK upload manager.
package s3
