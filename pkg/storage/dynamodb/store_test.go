package dynamodb

// testTables is the shared table layout for storage tests.
var testTables = Tables{
	Users:        "users",
	Requests:     "requests",
	Sessions:     "sessions",
	Transactions: "transactions",
	Certificates: "certificates",
	Ledger:       "ledger",
	Connections:  "connections",
}
