package store

// Run journal queries
const (
	queryInsertRun = `
		INSERT INTO runs (id, wheel, worker, scheduled_at, started_at, duration_ns, panicked)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	queryDeleteRunsBefore = `DELETE FROM runs WHERE started_at < ?`
)

const runsTable = "runs"

var runColumns = []string{
	"id",
	"wheel",
	"worker",
	"scheduled_at",
	"started_at",
	"duration_ns",
	"panicked",
}
