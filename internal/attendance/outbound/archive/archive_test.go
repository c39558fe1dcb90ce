package archive

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/pkg/instrument"
	"github.com/shandysiswandi/vocatrack/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStorage struct {
	mock.Mock
	body string
}

func (m *mockStorage) Close() error { return nil }

func (m *mockStorage) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	m.body = string(b)
	args := m.Called(ctx, bucket, key, opts)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *mockStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	return m.Called(ctx, bucket, key).Error(0)
}

func (m *mockStorage) BucketExists(ctx context.Context, bucket string) (bool, error) {
	args := m.Called(ctx, bucket)
	return args.Bool(0), args.Error(1)
}

func (m *mockStorage) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, expiry)
	return args.String(0), args.Error(1)
}

func TestArchive_SaveCSV(t *testing.T) {
	verifiedAt := time.Date(2026, 3, 2, 8, 0, 3, 0, time.UTC)
	records := []entity.OTPRecord{
		{
			ID:           42,
			Code:         "4821",
			ClaimantID:   "trainee-1",
			ClaimantName: "Siti, A.",
			Status:       entity.OTPStatusVerified,
			CreatedAt:    time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
			VerifiedAt:   &verifiedAt,
		},
	}

	store := &mockStorage{}
	key := "attendance/exports/2026-03-01_2026-03-02_x.csv"
	store.On("PutObject", mock.Anything, "exports", key, mock.MatchedBy(func(o storage.PutOptions) bool {
		return o.ContentType == contentTypeCSV && o.Size > 0 && o.Metadata["records"] == "1" &&
			o.ContentDisposition == `attachment; filename="2026-03-01_2026-03-02_x.csv"`
	})).Return(storage.ObjectInfo{Bucket: "exports", Key: key}, nil)
	store.On("PresignGet", mock.Anything, "exports", key, 15*time.Minute).Return("https://signed.example/x", nil)

	a := NewArchive(store, "exports", instrument.NewNoop())
	url, err := a.SaveCSV(context.Background(), key, records, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/x", url)
	store.AssertExpectations(t)

	rows, err := csv.NewReader(strings.NewReader(store.body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, []string{"42", "4821", "trainee-1", "Siti, A.", "verified", "2026-03-02T08:00:00Z", "2026-03-02T08:00:03Z"}, rows[1])
}

func TestArchive_SaveCSVNeutralisesFormulas(t *testing.T) {
	records := []entity.OTPRecord{
		{ID: 1, Code: "1111", ClaimantID: "=HYPERLINK(\"http://x\")", ClaimantName: "+Budi", Status: entity.OTPStatusVerified},
		{ID: 2, Code: "2222", ClaimantID: "@SUM(A1)", ClaimantName: "-1+2", Status: entity.OTPStatusVerified},
		{ID: 3, Code: "3333", ClaimantID: "trainee-3", ClaimantName: "Siti-Ann", Status: entity.OTPStatusVerified},
	}

	store := &mockStorage{}
	store.On("PutObject", mock.Anything, "exports", "k.csv", mock.Anything).Return(storage.ObjectInfo{}, nil)
	store.On("PresignGet", mock.Anything, "exports", "k.csv", time.Minute).Return("https://signed.example/k", nil)

	a := NewArchive(store, "exports", instrument.NewNoop())
	_, err := a.SaveCSV(context.Background(), "k.csv", records, time.Minute)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(store.body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{`'=HYPERLINK("http://x")`, "'+Budi"}, rows[1][2:4])
	assert.Equal(t, []string{"'@SUM(A1)", "'-1+2"}, rows[2][2:4])
	assert.Equal(t, []string{"trainee-3", "Siti-Ann"}, rows[3][2:4])
}

func TestArchive_SaveCSVUploadFails(t *testing.T) {
	store := &mockStorage{}
	store.On("PutObject", mock.Anything, "exports", "k.csv", mock.Anything).
		Return(storage.ObjectInfo{}, errors.New("bucket missing"))

	a := NewArchive(store, "exports", instrument.NewNoop())
	_, err := a.SaveCSV(context.Background(), "k.csv", nil, time.Minute)
	require.EqualError(t, err, "bucket missing")
	store.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, strings.Join(header, ",")+"\n", store.body)
}

func TestArchive_SaveCSVPresignFailsRemovesObject(t *testing.T) {
	store := &mockStorage{}
	store.On("PutObject", mock.Anything, "exports", "k.csv", mock.Anything).Return(storage.ObjectInfo{}, nil)
	store.On("PresignGet", mock.Anything, "exports", "k.csv", time.Minute).Return("", storage.ErrMissingSigner)
	store.On("DeleteObject", mock.Anything, "exports", "k.csv").Return(nil)

	a := NewArchive(store, "exports", instrument.NewNoop())
	_, err := a.SaveCSV(context.Background(), "k.csv", nil, time.Minute)
	require.ErrorIs(t, err, storage.ErrMissingSigner)
	store.AssertExpectations(t)
}
