package models

// Commit is a commit created by a publish run.
type Commit struct {
	Repo      string // directory the commit was made in
	Hash      string
	ShortHash string
	Message   string
}
