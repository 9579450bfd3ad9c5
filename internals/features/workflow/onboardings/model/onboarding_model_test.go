package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestDocumentPicksNewestOfType(t *testing.T) {
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	ob := &OnboardingModel{}

	require.NoError(t, ob.AppendDocument(Document{
		Type: DocTypeInternshipAgreement, FileURL: "https://cdn/docs/a1.pdf", UploadedAt: base,
	}))
	require.NoError(t, ob.AppendDocument(Document{
		Type: DocTypeNDA, FileURL: "https://cdn/docs/nda.pdf", UploadedAt: base.Add(time.Hour),
	}))
	// re-upload of the same type is appended, never deduplicated
	require.NoError(t, ob.AppendDocument(Document{
		Type: DocTypeInternshipAgreement, FileURL: "https://cdn/docs/a2.pdf", UploadedAt: base.Add(2 * time.Hour),
	}))

	docs, err := ob.GetDocuments()
	require.NoError(t, err)
	assert.Len(t, docs, 3)

	latest, err := ob.LatestDocument(DocTypeInternshipAgreement)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "https://cdn/docs/a2.pdf", latest.FileURL)
}

func TestLatestDocumentNilWhenAbsent(t *testing.T) {
	ob := &OnboardingModel{}
	latest, err := ob.LatestDocument(DocTypeInsurance)
	require.NoError(t, err)
	assert.Nil(t, latest)
}
