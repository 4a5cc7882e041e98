package user

// UpdatePermissionsDTO carries the full permission flag set. Updates replace
// the whole set; flags are not individually patchable. An all-false view set
// is allowed: such a user simply lands on the access-denied screen.
type UpdatePermissionsDTO struct {
	CanEditAllFields bool `json:"canEditAllFields"`
	CanDeleteTickets bool `json:"canDeleteTickets"`
	CanManageUsers   bool `json:"canManageUsers"`
	CanViewDashboard bool `json:"canViewDashboard"`
	CanViewTickets   bool `json:"canViewTickets"`
	CanViewAssets    bool `json:"canViewAssets"`
	CanViewAdmin     bool `json:"canViewAdmin"`
}
