package common

// Storage keys match the browser build of the SCB demo, so a localStorage
// export can be replayed against this store unchanged.
const (
	// KeyVaultBlob holds the serialized set of user records.
	KeyVaultBlob = "scb_global_vault_secure_v1"

	// KeySessionToken holds the raw id of the current user, persisted
	// independently of the vault.
	KeySessionToken = "scb_active_session_token"

	// KeyShellSnapshot holds the shell UI snapshot offered for restore on
	// startup. Distinct from KeySessionToken.
	KeyShellSnapshot = "scb_secure_session_v1"

	// KeyDashboardView caches the dashboard sub-view as an opaque string.
	// Cleared on logout and on snapshot discard.
	KeyDashboardView = "scb_dashboard_view"
)
