package itemset

// Counter computes the support of an itemset: the number of transactions
// that contain it.
type Counter interface {
	Support(s Itemset) int
}

// Support counts the transactions of db that are supersets of s with a merge
// scan per transaction. The empty itemset is contained in every transaction.
func Support(db *Database, s Itemset) int {
	count := 0
	for _, tx := range db.transactions {
		if containsSorted(tx.items, s.items) {
			count++
		}
	}
	return count
}
