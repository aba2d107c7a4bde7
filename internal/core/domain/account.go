package domain

// PermissionKey is one authorized key inside an account permission.
type PermissionKey struct {
	Address string
	Weight  int64
}

// Permission is a delegated signing slot on a ledger account.
type Permission struct {
	ID   int32
	Name string
	Keys []PermissionKey
}

// HasKey reports whether the given address is listed among the
// permission's authorized keys.
func (p Permission) HasKey(address string) bool {
	for _, key := range p.Keys {
		if key.Address == address {
			return true
		}
	}
	return false
}

// AccountSnapshot is a point-in-time read of the monitored account.
// It is fetched fresh on every sweep decision and never cached.
type AccountSnapshot struct {
	Address           string
	BalanceSun        int64
	ActivePermissions []Permission
}

// FindPermission returns the active permission with the given ID, or
// nil if the account carries no such permission.
func (s *AccountSnapshot) FindPermission(id int32) *Permission {
	for i := range s.ActivePermissions {
		if s.ActivePermissions[i].ID == id {
			return &s.ActivePermissions[i]
		}
	}
	return nil
}

// BlockRef identifies the latest block seen on the ledger, used as a
// reachability probe.
type BlockRef struct {
	ID        string
	Number    int64
	Timestamp int64
}
