package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/gradpredict/internal/adapters/repository"
	"github.com/okian/gradpredict/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"

	_ "modernc.org/sqlite"
)

func writeCSV(dir, content string) string {
	path := filepath.Join(dir, "colleges.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		panic(err)
	}
	return path
}

func TestCSVStore(t *testing.T) {
	Convey("Given a CSV catalog", t, func() {
		ctx := context.Background()
		dir := t.TempDir()

		Convey("When the file has the standard header", func() {
			path := writeCSV(dir, "College Name,Cutoff Percentage\nA,60\nB,75\nC,50\n")
			entries, err := repository.NewCSVStore(path).Load(ctx)

			Convey("Then rows are returned in file order", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldResemble, []catalog.Entry{
					{Name: "A", CutoffPercentage: 60},
					{Name: "B", CutoffPercentage: 75},
					{Name: "C", CutoffPercentage: 50},
				})
			})
		})

		Convey("When columns are reordered and padded", func() {
			path := writeCSV(dir, "\ufeffCity, Cutoff Percentage ,College Name\nPune, 65.5 , College of Engineering Pune\n\nDelhi,72,\"Delhi Technological University\"\n")
			entries, err := repository.NewCSVStore(path).Load(ctx)

			Convey("Then columns are found by name and values trimmed", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldResemble, []catalog.Entry{
					{Name: "College of Engineering Pune", CutoffPercentage: 65.5},
					{Name: "Delhi Technological University", CutoffPercentage: 72},
				})
			})
		})

		Convey("When custom column names are configured", func() {
			path := writeCSV(dir, "institute,cutoff\nX,40\n")
			entries, err := repository.NewCSVStore(path,
				repository.WithNameColumn("institute"),
				repository.WithCutoffColumn("cutoff"),
			).Load(ctx)

			Convey("Then they are used", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldResemble, []catalog.Entry{{Name: "X", CutoffPercentage: 40}})
			})
		})

		Convey("When only the header is present", func() {
			path := writeCSV(dir, "College Name,Cutoff Percentage\n")
			entries, err := repository.NewCSVStore(path).Load(ctx)

			Convey("Then the catalog is empty", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldBeEmpty)
			})
		})

		Convey("When the cutoff column is missing", func() {
			path := writeCSV(dir, "College Name,Rank\nA,1\n")
			_, err := repository.NewCSVStore(path).Load(ctx)

			Convey("Then loading fails", func() {
				So(errors.Is(err, repository.ErrLoadCatalog), ShouldBeTrue)
				So(errors.Is(err, repository.ErrMissingColumn), ShouldBeTrue)
			})
		})

		Convey("When the file is empty", func() {
			path := writeCSV(dir, "")
			_, err := repository.NewCSVStore(path).Load(ctx)
			So(errors.Is(err, repository.ErrMissingColumn), ShouldBeTrue)
		})

		Convey("When a cutoff is not numeric", func() {
			path := writeCSV(dir, "College Name,Cutoff Percentage\nA,60\nB,high\n")
			_, err := repository.NewCSVStore(path).Load(ctx)

			Convey("Then the error names the line", func() {
				So(errors.Is(err, repository.ErrInvalidRow), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "line 3")
			})
		})

		Convey("When a cutoff is above 100", func() {
			path := writeCSV(dir, "College Name,Cutoff Percentage\nA,160\n")
			_, err := repository.NewCSVStore(path).Load(ctx)
			So(errors.Is(err, repository.ErrInvalidRow), ShouldBeTrue)
		})

		Convey("When a name is blank", func() {
			path := writeCSV(dir, "College Name,Cutoff Percentage\n  ,60\n")
			_, err := repository.NewCSVStore(path).Load(ctx)
			So(errors.Is(err, repository.ErrInvalidRow), ShouldBeTrue)
		})

		Convey("When a row is short", func() {
			path := writeCSV(dir, "College Name,Cutoff Percentage\nA\n")
			_, err := repository.NewCSVStore(path).Load(ctx)
			So(errors.Is(err, repository.ErrLoadCatalog), ShouldBeTrue)
		})

		Convey("When the file does not exist", func() {
			_, err := repository.NewCSVStore(filepath.Join(dir, "nope.csv")).Load(ctx)
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})
	})
}

func TestSQLiteStore(t *testing.T) {
	Convey("Given a SQLite catalog", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "colleges.db")
		db, err := sql.Open("sqlite", path)
		So(err, ShouldBeNil)
		_, err = db.Exec(`CREATE TABLE colleges (name TEXT NOT NULL, cutoff_percentage REAL NOT NULL)`)
		So(err, ShouldBeNil)
		for _, row := range []catalog.Entry{{Name: "A", CutoffPercentage: 60}, {Name: "B", CutoffPercentage: 75}, {Name: "C", CutoffPercentage: 50}} {
			_, err = db.Exec(`INSERT INTO colleges (name, cutoff_percentage) VALUES (?, ?)`, row.Name, row.CutoffPercentage)
			So(err, ShouldBeNil)
		}
		So(db.Close(), ShouldBeNil)

		Convey("When loading through Open", func() {
			store, err := repository.Open(path)
			So(err, ShouldBeNil)
			entries, err := store.Load(ctx)

			Convey("Then rows come back in insertion order", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldResemble, []catalog.Entry{
					{Name: "A", CutoffPercentage: 60},
					{Name: "B", CutoffPercentage: 75},
					{Name: "C", CutoffPercentage: 50},
				})
			})
		})

		Convey("When the configured table does not exist", func() {
			store, err := repository.NewSQLiteStore(path, repository.WithTable("universities"))
			So(err, ShouldBeNil)
			_, err = store.Load(ctx)
			So(errors.Is(err, repository.ErrLoadCatalog), ShouldBeTrue)
		})

		Convey("When the table name is not an identifier", func() {
			_, err := repository.NewSQLiteStore(path, repository.WithTable("colleges; DROP TABLE x"))
			So(errors.Is(err, repository.ErrLoadCatalog), ShouldBeTrue)
		})

		Convey("When the database file is missing", func() {
			missing := filepath.Join(t.TempDir(), "missing.db")
			store, err := repository.NewSQLiteStore(missing)
			So(err, ShouldBeNil)
			_, err = store.Load(ctx)

			Convey("Then no empty database is created", func() {
				So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
				_, statErr := os.Stat(missing)
				So(errors.Is(statErr, os.ErrNotExist), ShouldBeTrue)
			})
		})
	})
}

func TestOpen(t *testing.T) {
	Convey("Given catalog paths with various extensions", t, func() {
		Convey("Then CSV and SQLite are recognised", func() {
			s, err := repository.Open("colleges.CSV")
			So(err, ShouldBeNil)
			So(s, ShouldHaveSameTypeAs, &repository.CSVStore{})

			s, err = repository.Open("colleges.sqlite3")
			So(err, ShouldBeNil)
			So(s, ShouldHaveSameTypeAs, &repository.SQLiteStore{})
		})

		Convey("And anything else is rejected", func() {
			_, err := repository.Open("colleges.xlsx")
			So(errors.Is(err, repository.ErrLoadCatalog), ShouldBeTrue)
		})
	})
}

func TestBundledCatalog(t *testing.T) {
	Convey("Given the catalog shipped in assets/", t, func() {
		store, err := repository.Open(filepath.Join("..", "..", "..", "assets", "mtech_colleges.csv"))
		So(err, ShouldBeNil)
		entries, err := store.Load(context.Background())

		Convey("Then it loads with every row", func() {
			So(err, ShouldBeNil)
			So(len(entries), ShouldEqual, 20)
		})
	})
}
