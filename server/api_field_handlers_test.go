package server

import (
	"net/http"
	"testing"

	"github.com/agentdms/admin/test/testdb"
)

const sampleFilenameField = "field-sample-filename"

func TestFields_DefaultFieldsAreNotRemovable(t *testing.T) {
	env := newTestEnv(t)
	env.superAdmin(t)
	root := env.as(env.login("root@example.com"))

	root.DELETE("/api/fields/" + sampleFilenameField).Expect().
		Status(http.StatusConflict).
		JSON().Object().HasValue("error", "field_not_removable")

	id := root.POST("/api/projects/"+testdb.SampleProjectID+"/fields").
		WithJSON(map[string]any{"name": "Notes", "field_type": "LongText"}).
		Expect().Status(http.StatusCreated).
		JSON().Object().
		HasValue("is_removable", true).
		HasValue("order", 3).
		Value("id").String().Raw()
	root.DELETE("/api/fields/" + id).Expect().Status(http.StatusNoContent)
}

func TestFields_CreateValidates(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin@example.com", testdb.AdministratorRoleID)
	admin := env.as(env.login("admin@example.com"))

	admin.POST("/api/projects/"+testdb.SampleProjectID+"/fields").
		WithJSON(map[string]any{"name": "Bad", "field_type": "Blob"}).
		Expect().Status(http.StatusBadRequest)
	admin.POST("/api/projects/missing/fields").
		WithJSON(map[string]any{"name": "Status", "field_type": "Text"}).
		Expect().Status(http.StatusNotFound)
}

func TestFields_VisibilityFiltersListing(t *testing.T) {
	env := newTestEnv(t)
	env.superAdmin(t)
	env.createUser(t, "admin@example.com", testdb.AdministratorRoleID)
	env.createUser(t, "viewer@example.com", testdb.UserRoleID)
	root := env.as(env.login("root@example.com"))
	admin := env.as(env.login("admin@example.com"))
	viewer := env.as(env.login("viewer@example.com"))

	path := "/api/projects/" + testdb.SampleProjectID + "/fields"
	admin.POST(path).
		WithJSON(map[string]any{"name": "Salary", "field_type": "Currency", "role_visibility": []string{testdb.AdministratorRoleID}}).
		Expect().Status(http.StatusCreated)
	admin.POST(path).
		WithJSON(map[string]any{"name": "Secret", "field_type": "Text", "role_visibility": []string{}}).
		Expect().Status(http.StatusCreated).
		JSON().Object().Value("role_visibility").Array().IsEmpty()

	viewer.GET(path).Expect().Status(http.StatusOK).
		JSON().Object().Value("data").Array().Length().IsEqual(3)
	admin.GET(path).Expect().Status(http.StatusOK).
		JSON().Object().Value("data").Array().Length().IsEqual(4)
	// Super Admin sees the field visible to nobody else
	root.GET(path).Expect().Status(http.StatusOK).
		JSON().Object().Value("data").Array().Length().IsEqual(5)

	viewer.GET("/api/projects/" + testdb.SampleProjectID).Expect().Status(http.StatusOK).
		JSON().Object().Value("fields").Array().Length().IsEqual(3)
}

func TestFields_UpdateVisibilityTriState(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin@example.com", testdb.AdministratorRoleID)
	admin := env.as(env.login("admin@example.com"))

	id := admin.POST("/api/projects/"+testdb.SampleProjectID+"/fields").
		WithJSON(map[string]any{"name": "Status", "field_type": "Text", "role_visibility": []string{testdb.UserRoleID}}).
		Expect().Status(http.StatusCreated).
		JSON().Object().Value("id").String().Raw()

	// absent key leaves visibility alone
	admin.PUT("/api/fields/"+id).WithJSON(map[string]any{"name": "State"}).
		Expect().Status(http.StatusOK).
		JSON().Object().HasValue("name", "State").
		Value("role_visibility").Array().ContainsOnly(testdb.UserRoleID)

	// explicit null clears it
	admin.PUT("/api/fields/"+id).WithBytes([]byte(`{"role_visibility":null}`)).WithHeader("Content-Type", "application/json").
		Expect().Status(http.StatusOK).
		JSON().Object().Value("role_visibility").IsNull()

	admin.PUT("/api/fields/"+id).WithBytes([]byte(`{"role_visibility":"all"}`)).WithHeader("Content-Type", "application/json").
		Expect().Status(http.StatusBadRequest)
}

func TestFields_Reorder(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin@example.com", testdb.AdministratorRoleID)
	admin := env.as(env.login("admin@example.com"))
	path := "/api/projects/" + testdb.SampleProjectID + "/fields/order"

	ids := []string{"field-sample-date-modified", "field-sample-date-created", sampleFilenameField}
	data := admin.PUT(path).WithJSON(map[string]any{"field_ids": ids}).
		Expect().Status(http.StatusOK).
		JSON().Object().Value("data").Array()
	data.Value(0).Object().HasValue("id", ids[0]).HasValue("order", 0)
	data.Value(2).Object().HasValue("id", ids[2]).HasValue("order", 2)

	// a partial list is rejected
	admin.PUT(path).WithJSON(map[string]any{"field_ids": ids[:2]}).
		Expect().Status(http.StatusBadRequest)
}
