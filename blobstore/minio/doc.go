// Package minio provides a blobstore.Store implementation using the MinIO client.
//
// It works with MinIO and any other S3-compatible object store (Ceph,
// SeaweedFS, Garage), so schema catalogs can live next to the data they
// describe.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "schemas/")
//	cat := catalog.New(store, registry)
package minio
