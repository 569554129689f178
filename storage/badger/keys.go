package badger

// Key prefixes for different data types
const (
	runRecordPrefix = "runrec"
)

// makeRunKey generates a key for a run record by name.
func makeRunKey(name string) []byte {
	return []byte(runRecordPrefix + ":" + name)
}
