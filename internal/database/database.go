package database

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoDatabase = "secure_profile_hub"

// Connect dials MongoDB and pings it before returning the client.
func Connect(ctx context.Context, mongoURI string, logger *slog.Logger) (*mongo.Client, error) {
	// Use longer timeout for Atlas connections
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	logger.Info("connecting to MongoDB", "uri", MaskURI(mongoURI))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "connect mongo")
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping mongo")
	}

	logger.Info("connected to MongoDB")
	return client, nil
}

// Disconnect closes the client with a bounded timeout.
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// DatabaseName picks the database from the path of the connection string,
// e.g. mongodb://host/profiles?retryWrites=true -> "profiles". An explicit
// name wins; otherwise the default is used.
func DatabaseName(mongoURI, explicit string) string {
	if explicit != "" {
		return explicit
	}

	rest := mongoURI
	if idx := strings.Index(rest, "://"); idx != -1 {
		rest = rest[idx+3:]
	}
	idx := strings.Index(rest, "/")
	if idx == -1 {
		return defaultMongoDatabase
	}
	dbPart := strings.SplitN(rest[idx+1:], "?", 2)[0]
	if dbPart == "" {
		return defaultMongoDatabase
	}
	return dbPart
}

// MaskURI hides the password in user:pass@host style URIs before logging.
func MaskURI(uri string) string {
	schemeEnd := strings.Index(uri, "://")
	at := strings.LastIndex(uri, "@")
	if schemeEnd == -1 || at == -1 || at < schemeEnd {
		return uri
	}
	userInfo := uri[schemeEnd+3 : at]
	colon := strings.Index(userInfo, ":")
	if colon == -1 {
		return uri
	}
	return uri[:schemeEnd+3] + userInfo[:colon] + ":***" + uri[at:]
}
