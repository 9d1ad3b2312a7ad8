package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type memoryBucket struct {
	objects map[string][]byte
	fail    bool
}

func (m *memoryBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.fail {
		return nil, errors.New("access denied")
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (m *memoryBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("no such key")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestSpacesService_SnapshotAndDownload(t *testing.T) {
	bucket := &memoryBucket{objects: map[string][]byte{}}
	s := newSpacesService(bucket, "hearth", "ams3", "/backups/")

	data := []byte("id,user_id,name,remind_utc,tz,details,freq\n")
	if err := s.Snapshot(context.Background(), "reminders.csv", data); err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if got := bucket.objects["hearth/backups/reminders.csv"]; !bytes.Equal(got, data) {
		t.Errorf("stored object = %q", got)
	}

	got, err := s.Download(context.Background(), "reminders.csv")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Download() = %q, want %q", got, data)
	}

	if _, err := s.Download(context.Background(), "missing.csv"); err == nil {
		t.Error("Download() of missing object returned no error")
	}
}

func TestSpacesService_SnapshotError(t *testing.T) {
	s := newSpacesService(&memoryBucket{fail: true}, "hearth", "ams3", "")
	if err := s.Snapshot(context.Background(), "reminders.csv", nil); err == nil {
		t.Error("Snapshot() returned no error")
	}
	if s.key("reminders.csv") != "reminders.csv" {
		t.Errorf("key() = %q", s.key("reminders.csv"))
	}
}
