package minio

import (
	"bytes"
	"context"
	"io"
	"path"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/pkg/errors"
)

const structurePrefix = "structures/"

// StructureArchive stores one PDB object per content key at
// structures/<key>/molecule.pdb.
type StructureArchive struct {
	mc     *MinIOClient
	logger logging.Logger
}

// NewStructureArchive returns an archive over mc.
func NewStructureArchive(mc *MinIOClient, log logging.Logger) *StructureArchive {
	return &StructureArchive{mc: mc, logger: log}
}

// ObjectName returns the object path of a content key.
func ObjectName(key string) string {
	return path.Join(structurePrefix, key, molecule.PDBFilename)
}

// Put uploads pdb under key with the SMILES recorded as user metadata.
func (a *StructureArchive) Put(ctx context.Context, key, smiles string, pdb []byte) (string, error) {
	name := ObjectName(key)
	_, err := a.mc.client.PutObject(ctx, a.mc.config.Bucket, name, bytes.NewReader(pdb), int64(len(pdb)), minio.PutObjectOptions{
		ContentType:        molecule.PDBMIMEType,
		ContentDisposition: `attachment; filename="` + molecule.PDBFilename + `"`,
		UserMetadata:       map[string]string{"smiles": smiles},
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStorageError, "failed to archive structure")
	}
	a.logger.Debug("Structure archived", logging.String("object", name), logging.Int("bytes", len(pdb)))
	return name, nil
}

// Get downloads the archived PDB for key. A missing object is
// ErrCodeStructureNotFound.
func (a *StructureArchive) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := a.mc.client.GetObject(ctx, a.mc.config.Bucket, ObjectName(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, a.translate(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, a.translate(err)
	}
	return data, nil
}

// Exists reports whether key has been archived.
func (a *StructureArchive) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.mc.client.StatObject(ctx, a.mc.config.Bucket, ObjectName(key), minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if isNoSuchKey(err) {
		return false, nil
	}
	return false, errors.Wrap(err, errors.ErrCodeStorageError, "failed to stat structure")
}

// PresignedURL returns a time-limited download link for key.
func (a *StructureArchive) PresignedURL(ctx context.Context, key string) (string, time.Time, error) {
	expiry := a.mc.config.PresignExpiry
	u, err := a.mc.client.PresignedGetObject(ctx, a.mc.config.Bucket, ObjectName(key), expiry, nil)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, errors.ErrCodeStorageError, "failed to presign structure")
	}
	return u.String(), time.Now().Add(expiry), nil
}

// Ping checks the underlying bucket.
func (a *StructureArchive) Ping(ctx context.Context) error {
	return a.mc.Ping(ctx)
}

func (a *StructureArchive) translate(err error) error {
	if isNoSuchKey(err) {
		return errors.New(errors.ErrCodeStructureNotFound, "structure not archived").WithCause(err)
	}
	return errors.Wrap(err, errors.ErrCodeStorageError, "failed to read archived structure")
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

//Personal.AI order the ending
