package core

// Entity identifies a registry-owned simulation object
// Zero is never issued and means "no entity"
type Entity uint64
