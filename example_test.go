package autobuild_test

import (
	"fmt"

	"github.com/reoring/autobuild"
)

func ExampleSchema_Plan() {
	type Account struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
		Bio      string `json:"bio,omitempty"`
	}
	var (
		id       = autobuild.KeyOf[Account, int]("id")
		username = autobuild.KeyOf[Account, string]("username")
	)

	s := autobuild.MustDeclare[Account]()

	_, err := s.Plan("username")
	fmt.Println(autobuild.MissingKeys(err))

	b, _ := s.Plan("id", "username")
	out, _ := autobuild.With(b, id, 101)
	if _, done := autobuild.Finalized(out); !done {
		fmt.Println("still building")
	}

	next, _ := autobuild.Continue(out)
	out, _ = autobuild.With(next, username, "admin")
	rec, _ := autobuild.Finalized(out)
	fmt.Println(rec)
	fmt.Printf("%+v\n", rec.MustValue())
	// Output:
	// [id]
	// still building
	// {id: 101, username: admin}
	// {ID:101 Username:admin Bio:}
}

func ExampleFeedJSON() {
	type Complex struct {
		Data   *string        `json:"data"`
		Count  int            `json:"count"`
		Config map[string]any `json:"config"`
	}
	s := autobuild.MustDeclare[Complex]()
	out, err := autobuild.FeedJSON(s.MustPlan("data", "count", "config"), []byte(`{"data":null,"count":0,"config":null}`))
	if err != nil {
		fmt.Println(err)
		return
	}
	rec, _ := autobuild.Finalized(out)
	b, _ := rec.MarshalJSON()
	fmt.Println(string(b))
	// Output:
	// {"data":null,"count":0,"config":null}
}
