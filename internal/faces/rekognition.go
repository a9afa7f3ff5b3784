package faces

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// Fixed request parameters shared by every call in a batch.
const (
	maxFacesPerImage    = int32(1)
	similarityThreshold = float32(90.0)
)

// detectionAttributes requests both the minimal and the full-detail face
// analysis on enrollment.
var detectionAttributes = []types.Attribute{
	types.AttributeDefault,
	types.AttributeAll,
}

// Rekognition implements Client against AWS Rekognition.
type Rekognition struct {
	client *rekognition.Client
}

// NewRekognition builds a Rekognition client for the given static
// credentials and region.
func NewRekognition(ctx context.Context, accessKey, secretKey, region string) (*Rekognition, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Rekognition{client: rekognition.NewFromConfig(cfg)}, nil
}

func (r *Rekognition) DescribeCollection(ctx context.Context, id string) (bool, error) {
	_, err := r.client.DescribeCollection(ctx, &rekognition.DescribeCollectionInput{
		CollectionId: aws.String(id),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to describe collection %s: %w", id, err)
	}
	return true, nil
}

func (r *Rekognition) CreateCollection(ctx context.Context, id string) error {
	_, err := r.client.CreateCollection(ctx, &rekognition.CreateCollectionInput{
		CollectionId: aws.String(id),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", id, err)
	}
	return nil
}

func (r *Rekognition) IndexImage(ctx context.Context, collectionID string, image []byte) ([]Face, error) {
	out, err := r.client.IndexFaces(ctx, &rekognition.IndexFacesInput{
		CollectionId:        aws.String(collectionID),
		Image:               &types.Image{Bytes: image},
		MaxFaces:            aws.Int32(maxFacesPerImage),
		QualityFilter:       types.QualityFilterAuto,
		DetectionAttributes: detectionAttributes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to index faces: %w", err)
	}

	faces := make([]Face, 0, len(out.FaceRecords))
	for _, rec := range out.FaceRecords {
		if rec.Face == nil || rec.Face.FaceId == nil {
			continue
		}
		faces = append(faces, Face{ID: *rec.Face.FaceId})
	}
	return faces, nil
}

func (r *Rekognition) SearchImage(ctx context.Context, collectionID string, image []byte) ([]Match, error) {
	out, err := r.client.SearchFacesByImage(ctx, &rekognition.SearchFacesByImageInput{
		CollectionId:       aws.String(collectionID),
		Image:              &types.Image{Bytes: image},
		MaxFaces:           aws.Int32(maxFacesPerImage),
		QualityFilter:      types.QualityFilterAuto,
		FaceMatchThreshold: aws.Float32(similarityThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search faces: %w", err)
	}

	matches := make([]Match, 0, len(out.FaceMatches))
	for _, m := range out.FaceMatches {
		if m.Face == nil || m.Face.FaceId == nil {
			continue
		}
		matches = append(matches, Match{
			FaceID:     *m.Face.FaceId,
			Similarity: aws.ToFloat32(m.Similarity),
		})
	}
	return matches, nil
}
