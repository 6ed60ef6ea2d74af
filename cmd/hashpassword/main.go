// Command hashpassword prints a bcrypt hash for ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/hashpassword 'the admin password'
//	echo -n 'the admin password' | go run ./cmd/hashpassword
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"shree-admin/pkg/password"
	"shree-admin/pkg/validator"
)

func main() {
	log.SetFlags(0)

	plain, err := readPassword()
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}

	if err := validator.Password(plain); err != nil {
		log.Fatalf("Rejected password: %v", err)
	}

	hash, err := password.Hash(plain)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println(hash)
}

func readPassword() (string, error) {
	if len(os.Args) > 1 {
		return os.Args[1], nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
