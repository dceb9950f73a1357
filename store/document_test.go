package store

import (
	"context"
	"testing"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/models"
	"github.com/agentdms/admin/test/testdb"
	"github.com/stretchr/testify/require"
)

func TestDocumentValuesAndPages(t *testing.T) {
	db := testdb.Open(t)
	ds := NewDocumentStore(db)
	ctx := context.Background()

	doc, err := ds.CreateDocument(ctx, models.Document{ProjectID: testdb.SampleProjectID, FileName: "scan.pdf", FileSize: 42}, "tester")
	require.NoError(t, err)
	require.Equal(t, testdb.SampleProjectID+"/scan.pdf", doc.StoragePath)

	v1, v2 := "scan.pdf", "renamed.pdf"
	_, err = ds.SetFieldValue(ctx, doc.ID, "field-sample-filename", &v1, "tester")
	require.NoError(t, err)
	_, err = ds.SetFieldValue(ctx, doc.ID, "field-sample-filename", &v2, "tester")
	require.NoError(t, err)

	_, err = ds.UpsertPage(ctx, models.DocumentPage{DocumentID: doc.ID, PageNumber: 1, ImagePath: "p1.png", Width: 10, Height: 20}, "tester")
	require.NoError(t, err)
	_, err = ds.UpsertPage(ctx, models.DocumentPage{DocumentID: doc.ID, PageNumber: 1, ImagePath: "p1-v2.png"}, "tester")
	require.NoError(t, err)
	_, err = ds.UpsertPage(ctx, models.DocumentPage{DocumentID: doc.ID, PageNumber: 0, ImagePath: "x.png"}, "tester")
	require.ErrorIs(t, err, errors.ErrInvalidRequest)

	got, err := ds.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, got.Values, 1)
	require.Equal(t, "renamed.pdf", *got.Values[0].Value)
	require.Len(t, got.Pages, 1)
	require.Equal(t, "p1-v2.png", got.Pages[0].ImagePath)

	list, total, _, err := ds.ListByProject(ctx, testdb.SampleProjectID, Page{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, list, 1)

	require.NoError(t, ds.DeleteDocument(ctx, doc.ID))
	require.ErrorIs(t, ds.DeleteDocument(ctx, doc.ID), errors.ErrNotFound)
}

func TestSetFieldValueRejectsForeignField(t *testing.T) {
	db := testdb.Open(t)
	ds := NewDocumentStore(db)
	ps := NewProjectStore(db)
	ctx := context.Background()

	other, err := ps.CreateProject(ctx, models.Project{Name: "Other"}, "tester")
	require.NoError(t, err)
	doc, err := ds.CreateDocument(ctx, models.Document{ProjectID: testdb.SampleProjectID, FileName: "a.pdf"}, "tester")
	require.NoError(t, err)

	v := "x"
	_, err = ds.SetFieldValue(ctx, doc.ID, other.Fields[0].ID, &v, "tester")
	require.ErrorIs(t, err, errors.ErrNotFound)
}
