package repository

import (
	"context"
	"crypto/tls"
	"fmt"
	"strconv"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

const defaultVectorDimension = 1024

// QdrantConnectionConfig holds configuration for the Qdrant connection.
type QdrantConnectionConfig struct {
	Host            string
	Port            int
	APIKey          string // Qdrant Cloud API Key (enables TLS automatically)
	UseTLS          bool   // Explicitly enable TLS without API Key
	VectorDimension int
}

// apiKeyInterceptor creates a unary interceptor that adds the API key to metadata.
func apiKeyInterceptor(apiKey string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", apiKey)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// QdrantClient holds a shared gRPC connection to Qdrant. Both vector
// collections (prompts and categories) are served over this connection.
type QdrantClient struct {
	conn            *grpc.ClientConn
	pointsClient    pb.PointsClient
	collectClient   pb.CollectionsClient
	vectorDimension int
}

// NewQdrantClient dials Qdrant. Supports both local Qdrant (insecure) and
// Qdrant Cloud (TLS + API key).
func NewQdrantClient(cfg *QdrantConnectionConfig) (*QdrantClient, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	vectorDimension := cfg.VectorDimension
	if vectorDimension <= 0 {
		vectorDimension = defaultVectorDimension
	}

	var opts []grpc.DialOption

	// TLS is enabled if an API key is set or UseTLS is explicitly true
	useTLS := cfg.UseTLS || cfg.APIKey != ""

	if useTLS {
		tlsConfig := &tls.Config{
			MinVersion: tls.VersionTLS13,
		}
		creds := credentials.NewTLS(tlsConfig)
		opts = append(opts, grpc.WithTransportCredentials(creds))

		if cfg.APIKey != "" {
			opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(cfg.APIKey)))
		}
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant: %w", err)
	}

	return &QdrantClient{
		conn:            conn,
		pointsClient:    pb.NewPointsClient(conn),
		collectClient:   pb.NewCollectionsClient(conn),
		vectorDimension: vectorDimension,
	}, nil
}

// Close closes the gRPC connection.
func (c *QdrantClient) Close() error {
	return c.conn.Close()
}

// Collection returns a handle scoped to one named collection.
func (c *QdrantClient) Collection(name string) *VectorCollection {
	return &VectorCollection{
		client:         c,
		collectionName: name,
	}
}

// VectorCollection is a per-collection view over the shared Qdrant client.
// IDs are the numeric identities of the relational rows that own the
// embeddings; the collection never holds ids this system did not write.
type VectorCollection struct {
	client         *QdrantClient
	collectionName string
}

// Name returns the collection name.
func (v *VectorCollection) Name() string {
	return v.collectionName
}

// EnsureCollection creates the collection if it doesn't exist and verifies
// the vector dimension when it does.
func (v *VectorCollection) EnsureCollection(ctx context.Context) error {
	c := v.client

	info, err := c.collectClient.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: v.collectionName,
	})
	if err == nil {
		if size, ok := collectionVectorSize(info.GetResult()); ok {
			if size != uint64(c.vectorDimension) {
				return fmt.Errorf("collection %s has vector size %d, expected %d", v.collectionName, size, c.vectorDimension)
			}
		}
		return nil // Collection exists
	}

	_, err = c.collectClient.Create(ctx, &pb.CreateCollection{
		CollectionName: v.collectionName,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(c.vectorDimension),
					Distance: pb.Distance_Cosine,
				},
			},
		},
		HnswConfig: &pb.HnswConfigDiff{
			M:                 optionalUint64(16),
			EfConstruct:       optionalUint64(128),
			FullScanThreshold: optionalUint64(10000),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

func optionalUint64(v uint64) *uint64 {
	return &v
}

func collectionVectorSize(info *pb.CollectionInfo) (uint64, bool) {
	if info == nil {
		return 0, false
	}

	config := info.GetConfig()
	if config == nil {
		return 0, false
	}

	params := config.GetParams()
	if params == nil {
		return 0, false
	}

	vectors := params.GetVectorsConfig()
	if vectors == nil {
		return 0, false
	}

	if single := vectors.GetParams(); single != nil {
		if size := single.GetSize(); size > 0 {
			return size, true
		}
	}

	return 0, false
}

// Upsert inserts or updates the embedding for a record. The point id is the
// record's numeric identity; the source text rides along as payload so the
// collection can be audited and rebuilt.
func (v *VectorCollection) Upsert(ctx context.Context, id uint, text string, vector []float32) error {
	points := []*pb.PointStruct{
		{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Num{
					Num: uint64(id),
				},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{
						Data: vector,
					},
				},
			},
			Payload: map[string]*pb.Value{
				"text": {Kind: &pb.Value_StringValue{StringValue: text}},
			},
		},
	}

	_, err := v.client.pointsClient.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: v.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// Neighbor is one nearest-neighbor hit: the stored record's id (stringified
// numeric identity) and its distance from the query embedding. Lower distance
// means more similar.
type Neighbor struct {
	ID       string
	Distance float32
}

// Query performs a nearest-neighbor search and returns neighbors ordered by
// ascending distance. Qdrant scores cosine similarity (higher = closer), so
// scores are converted to distance = 1 - score; the descending-score order
// Qdrant guarantees is exactly ascending-distance order.
func (v *VectorCollection) Query(ctx context.Context, vector []float32, limit int) ([]Neighbor, error) {
	req := &pb.SearchPoints{
		CollectionName: v.collectionName,
		Vector:         vector,
		Limit:          uint64(limit),
	}

	resp, err := v.client.pointsClient.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	neighbors := make([]Neighbor, len(resp.Result))
	for i, scored := range resp.Result {
		neighbors[i] = Neighbor{
			ID:       pointIDString(scored.Id),
			Distance: 1 - scored.Score,
		}
	}

	return neighbors, nil
}

func pointIDString(id *pb.PointId) string {
	if id == nil {
		return ""
	}
	if num, ok := id.GetPointIdOptions().(*pb.PointId_Num); ok {
		return strconv.FormatUint(num.Num, 10)
	}
	return id.GetUuid()
}
