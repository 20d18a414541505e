package auth

// Role names are stored verbatim in the users table and in JWT claims.
const (
	RoleStaff = "staff"
	RoleHOD   = "hod"
	RoleHR    = "hr"
	RoleAdmin = "admin"
)

// roleRank is the single total order used for every permission check.
// HODs sit below HR so that lock/unlock stays an HR/admin operation
// while HODs still clear the privileged-edit threshold.
var roleRank = map[string]int{
	RoleStaff: 1,
	RoleHOD:   2,
	RoleHR:    3,
	RoleAdmin: 4,
}

func ValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// AtLeast reports whether role meets or exceeds threshold. Unknown
// roles never qualify.
func AtLeast(role, threshold string) bool {
	r, ok := roleRank[role]
	if !ok {
		return false
	}
	t, ok := roleRank[threshold]
	if !ok {
		return false
	}
	return r >= t
}
