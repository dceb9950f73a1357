package store

import (
	"context"
	"testing"

	"github.com/agentdms/admin/errors"
	"github.com/agentdms/admin/models"
	"github.com/agentdms/admin/test/testdb"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectAddsDefaultFields(t *testing.T) {
	db := testdb.Open(t)
	ps := NewProjectStore(db)
	ctx := context.Background()

	p, err := ps.CreateProject(ctx, models.Project{Name: "Contracts"}, "tester")
	require.NoError(t, err)
	require.True(t, p.IsActive)
	require.Len(t, p.Fields, 3)

	names := []string{p.Fields[0].Name, p.Fields[1].Name, p.Fields[2].Name}
	require.Equal(t, []string{models.DefaultFieldFilename, models.DefaultFieldDateCreated, models.DefaultFieldDateModified}, names)
	for _, f := range p.Fields {
		require.False(t, f.IsRemovable)
		require.True(t, f.IsDefault)
	}

	_, err = ps.CreateProject(ctx, models.Project{Name: "  "}, "tester")
	require.ErrorIs(t, err, errors.ErrInvalidRequest)
}

func TestListProjectsPaginatesAndHidesArchived(t *testing.T) {
	db := testdb.Open(t)
	ps := NewProjectStore(db)
	ctx := context.Background()

	var last *models.Project
	for _, name := range []string{"A", "B", "C"} {
		p, err := ps.CreateProject(ctx, models.Project{Name: name}, "tester")
		require.NoError(t, err)
		last = p
	}
	require.NoError(t, ps.ArchiveProject(ctx, last.ID, "tester"))

	list, total, _, err := ps.ListProjects(ctx, Page{Page: 1, PageSize: 2}, false)
	require.NoError(t, err)
	require.EqualValues(t, 3, total) // seeded sample + A + B
	require.Len(t, list, 2)

	_, total, _, err = ps.ListProjects(ctx, Page{Page: 1, PageSize: 10}, true)
	require.NoError(t, err)
	require.EqualValues(t, 4, total)

	// past the end serves the last page
	list, _, served, err := ps.ListProjects(ctx, Page{Page: 9, PageSize: 2}, false)
	require.NoError(t, err)
	require.Equal(t, 2, served.Page)
	require.Len(t, list, 1)

	require.ErrorIs(t, ps.ArchiveProject(ctx, "missing", "tester"), errors.ErrNotFound)
}

func TestCloneProjectCopiesFieldsAndRestrictions(t *testing.T) {
	db := testdb.Open(t)
	ps := NewProjectStore(db)
	fs := NewFieldStore(db)
	rs := NewRestrictionStore(db)
	ctx := context.Background()

	src, err := ps.CreateProject(ctx, models.Project{Name: "Invoices"}, "tester")
	require.NoError(t, err)
	status, err := fs.CreateField(ctx, models.CustomField{ProjectID: src.ID, Name: "Status", FieldType: models.FieldTypeText}, "tester")
	require.NoError(t, err)
	_, err = rs.Create(ctx, models.RoleFieldValueRestriction{
		RoleID: testdb.UserRoleID, CustomFieldID: status.ID, Values: models.NewStringSet("open"), IsAllowList: true,
	}, "tester")
	require.NoError(t, err)

	clone, err := ps.CloneProject(ctx, src.ID, "tester")
	require.NoError(t, err)
	require.Equal(t, "Invoices (Copy)", clone.Name)
	require.NotEqual(t, src.ID, clone.ID)
	require.Len(t, clone.Fields, 4)

	cloned := clone.Fields[3]
	require.Equal(t, "Status", cloned.Name)
	require.NotEqual(t, status.ID, cloned.ID)
	rows, err := rs.ListForField(ctx, cloned.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, models.StringSet{"open"}, rows[0].Values)
}

func TestDeleteProjectCascades(t *testing.T) {
	db := testdb.Open(t)
	ps := NewProjectStore(db)
	ds := NewDocumentStore(db)
	ctx := context.Background()

	p, err := ps.CreateProject(ctx, models.Project{Name: "Scratch"}, "tester")
	require.NoError(t, err)
	doc, err := ds.CreateDocument(ctx, models.Document{ProjectID: p.ID, FileName: "a.pdf"}, "tester")
	require.NoError(t, err)
	v := "a.pdf"
	_, err = ds.SetFieldValue(ctx, doc.ID, p.Fields[0].ID, &v, "tester")
	require.NoError(t, err)

	require.NoError(t, ps.DeleteProject(ctx, p.ID))
	_, err = ds.GetDocument(ctx, doc.ID)
	require.ErrorIs(t, err, errors.ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&models.CustomField{}).Where("project_id = ?", p.ID).Count(&n).Error)
	require.Zero(t, n)
	require.NoError(t, db.Model(&models.DocumentFieldValue{}).Where("document_id = ?", doc.ID).Count(&n).Error)
	require.Zero(t, n)
}

func TestUpdateProject(t *testing.T) {
	db := testdb.Open(t)
	ps := NewProjectStore(db)
	ctx := context.Background()

	name := "Renamed"
	inactive := false
	p, err := ps.UpdateProject(ctx, testdb.SampleProjectID, ProjectUpdate{Name: &name, IsActive: &inactive}, "tester")
	require.NoError(t, err)
	require.Equal(t, "Renamed", p.Name)
	require.False(t, p.IsActive)
	require.Equal(t, "tester", *p.ModifiedBy)
}
