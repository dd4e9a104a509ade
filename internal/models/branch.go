package models

// PushTarget is where a repository is pushed. An empty Branch means the
// repository's current branch.
type PushTarget struct {
	Remote string
	Branch string
}

func (t PushTarget) String() string {
	if t.Branch == "" {
		return t.Remote + " (current branch)"
	}
	return t.Remote + "/" + t.Branch
}
