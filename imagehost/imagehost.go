package imagehost

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

var client *storage.Client

var bucketName string

// Init connects to Google Cloud Storage and checks the bucket is reachable.
func Init(bucket, credentialsFile string) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var err error
	client, err = storage.NewClient(ctx, opts...)
	if err != nil {
		log.Fatalf("Failed to connect to Google Cloud Storage: %v", err)
	}

	bucketName = bucket
	if _, err := client.Bucket(bucketName).Attrs(ctx); err != nil {
		log.Fatalf("Cannot access bucket %s: %v", bucketName, err)
	}
	log.Printf("Bucket %s ready", bucketName)
}

func Close() {
	if client != nil {
		client.Close()
	}
}

// extension maps a data-URI media type to a file extension.
func extension(mediaType string) string {
	switch strings.ToLower(mediaType) {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "jpeg"
	}
}

// decodeDataURI splits a "data:image/png;base64,AAAA" payload into media type
// and raw bytes. A bare base64 string without the prefix is accepted too.
func decodeDataURI(payload string) (string, []byte, error) {
	mediaType := "image/jpeg"
	data := payload

	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return "", nil, fmt.Errorf("malformed data URI")
		}
		meta := payload[len("data:"):idx]
		data = payload[idx+1:]
		if semi := strings.Index(meta, ";"); semi >= 0 {
			mediaType = meta[:semi]
		} else if meta != "" {
			mediaType = meta
		}
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, fmt.Errorf("decode image payload: %w", err)
	}
	return mediaType, raw, nil
}

// UploadBase64 stores an image payload in the bucket and returns its public
// URL. Object names are unique per upload.
func UploadBase64(payload, folder string) (string, error) {
	mediaType, raw, err := decodeDataURI(payload)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	objectName := fmt.Sprintf("%s/%s_%d.%s", folder, uuid.NewString(), time.Now().UnixNano(), extension(mediaType))

	writer := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	writer.ContentType = mediaType
	if _, err := writer.Write(raw); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close writer: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName), nil
}

// UploadAll uploads every payload and returns the URLs in order.
func UploadAll(payloads []string, folder string) ([]string, error) {
	urls := make([]string, 0, len(payloads))
	for _, p := range payloads {
		url, err := UploadBase64(p, folder)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
