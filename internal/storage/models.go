package storage

// Record is one durable key-value entry. The ledger lives in a single
// record; derived state is never written here.
type Record struct {
	Key   string `gorm:"primaryKey"`
	Value []byte
}
