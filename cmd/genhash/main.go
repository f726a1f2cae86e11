// Command genhash prints a bcrypt hash for the given password, for seeding
// users by hand.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	flag.Parse()
	password := flag.Arg(0)
	if password == "" {
		fmt.Fprintln(os.Stderr, "usage: genhash <password>")
		os.Exit(2)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash failed:", err)
		os.Exit(1)
	}
	fmt.Println(string(hash))
}
