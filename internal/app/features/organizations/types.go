// internal/app/features/organizations/types.go
package organizations

// createRequest is the body of POST /org/create. The organization's first
// admin is provisioned alongside the organization itself.
type createRequest struct {
	OrganizationName string `json:"organization_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
}

// createResponse is returned with 201 on successful creation.
type createResponse struct {
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	CollectionName   string `json:"collection_name"`
	AdminEmail       string `json:"admin_email"`
}

// getResponse is returned by GET /org/get.
type getResponse struct {
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	CollectionName   string `json:"collection_name"`
}

// updateRequest is the body of PUT /org/update.
type updateRequest struct {
	OrganizationID      string `json:"organization_id"`
	NewOrganizationName string `json:"new_organization_name"`
}

// updateResponse is returned with 200 after a successful rename.
type updateResponse struct {
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	CollectionName   string `json:"collection_name"`
	DocumentsMoved   int64  `json:"documents_moved"`
}

// deleteRequest is the body of DELETE /org/delete.
type deleteRequest struct {
	OrganizationID string `json:"organization_id"`
}

// deleteResponse is returned with 200 after a successful soft delete.
type deleteResponse struct {
	OrganizationID string `json:"organization_id"`
	Active         bool   `json:"active"`
}
