// Package faces defines the boundary to the remote face-recognition
// service and its AWS Rekognition implementation.
package faces

import "context"

// Face is one face template enrolled into a collection.
type Face struct {
	ID string
}

// Match is one search hit against a collection.
type Match struct {
	FaceID     string
	Similarity float32
}

// Client is the remote face-recognition boundary. An empty result slice
// from IndexImage or SearchImage means no face was detected or no match
// was found; it is a valid outcome, not an error.
type Client interface {
	// DescribeCollection reports whether the collection exists.
	DescribeCollection(ctx context.Context, id string) (bool, error)

	// CreateCollection creates an empty collection with the given id.
	CreateCollection(ctx context.Context, id string) error

	// IndexImage enrolls the faces detected in image into the collection.
	IndexImage(ctx context.Context, collectionID string, image []byte) ([]Face, error)

	// SearchImage finds the best-matching enrolled faces for the largest
	// face in image.
	SearchImage(ctx context.Context, collectionID string, image []byte) ([]Match, error)
}
