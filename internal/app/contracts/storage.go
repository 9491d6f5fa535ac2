package contracts

import "context"

type ObjectStorage interface {
	UploadBase64(ctx context.Context, data []byte, bucketName, objectName, fileExtension string) (string, error)
}
