package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type DefaultStore struct {
	db *sql.DB
}

// HashChart identifies a chart by the digest of its file content, so edits
// to the chart start a fresh history.
func HashChart(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *DefaultStore) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return err
	}

	initStatement := `
	create table if not exists results
	  (
		  id integer not null primary key,
		  sum text,
		  played integer,
		  speed real,
		  autoplay integer,
		  grades text,
		  score integer,
		  bestcombo integer,
		  gauge integer,
		  cleared integer
	  );
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultStore) Save(sum string, result *Result) {
	// Autoplay runs are recorded for completeness but carry no real grades.
	grades, err := json.Marshal(result.Grades)
	if nil != err {
		log.Println("unable to marshal grade counts", err)
		return
	}
	_, err = s.db.Exec(
		"insert into results(sum, played, speed, autoplay, grades, score, bestcombo, gauge, cleared) values(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		sum, result.PlayedAt.Unix(), result.Speed, result.AutoPlay, grades,
		result.Score, result.BestCombo, result.Gauge, result.Cleared)
	if nil != err {
		log.Println("unable to save result", err)
		return
	}
}

func (s *DefaultStore) Load(sum string) []Result {
	results := []Result{}
	rows, err := s.db.Query(
		"select sum, played, speed, autoplay, grades, score, bestcombo, gauge, cleared from results where sum = ?", sum)
	if nil != err && err != sql.ErrNoRows {
		log.Println("unable to load results", err)
		return results
	}
	defer rows.Close()
	for rows.Next() {
		var r Result
		var played int64
		var grades []byte
		rows.Scan(&r.Sum, &played, &r.Speed, &r.AutoPlay, &grades,
			&r.Score, &r.BestCombo, &r.Gauge, &r.Cleared)
		if err := json.Unmarshal(grades, &r.Grades); nil != err {
			log.Println("unable to unmarshal grade counts")
			continue
		}
		r.PlayedAt = time.Unix(played, 0)
		results = append(results, r)
	}
	return results
}
