package cmd

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"employees", "departments", "users"} {
				if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		accounts := []struct {
			Username string
			Role     string
		}{
			{"admin", "admin"},
			{"jdoe", "user"},
		}

		for _, a := range accounts {
			if rowExists(db, "SELECT 1 FROM users WHERE username = $1", a.Username) {
				fmt.Printf("user %s already exists, skipping\n", a.Username)
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO users (username, password_hash, role, created_at, updated_at) VALUES ($1, $2, $3, now(), now())",
				a.Username, string(hash), a.Role,
			); err != nil {
				log.Fatalf("failed to insert user %s: %v", a.Username, err)
			}
			fmt.Printf("Seeded %s account: %s\n", a.Role, a.Username)
		}

		departments := []struct {
			Name     string
			Location string
		}{
			{"Engineering", "Jakarta"},
			{"Human Resources", "Bandung"},
			{"Finance", "Jakarta"},
		}

		for _, d := range departments {
			if rowExists(db, "SELECT 1 FROM departments WHERE name = $1", d.Name) {
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO departments (name, location, created_at, updated_at) VALUES ($1, $2, now(), now())",
				d.Name, d.Location,
			); err != nil {
				log.Fatalf("failed to insert department %s: %v", d.Name, err)
			}
			fmt.Printf("Seeded department: %s\n", d.Name)
		}

		employees := []struct {
			FirstName  string
			LastName   string
			Email      string
			Phone      string
			Salary     float64
			Department string
		}{
			{"Alya", "Putri", "alya.putri@mail.com", "0812345678", 8500.00, "Engineering"},
			{"Budi", "Santoso", "budi.santoso@mail.com", "0812345679", 7200.00, "Engineering"},
			{"Citra", "Dewi", "citra.dewi@mail.com", "0812345680", 6400.00, "Human Resources"},
			{"Dimas", "Pratama", "dimas.pratama@mail.com", "0812345681", 9100.00, "Finance"},
		}

		for _, e := range employees {
			if rowExists(db, "SELECT 1 FROM employees WHERE email = $1", e.Email) {
				continue
			}

			var deptID int64
			if err := db.QueryRow("SELECT id FROM departments WHERE name = $1", e.Department).Scan(&deptID); err != nil {
				log.Fatalf("department %s not found for employee %s: %v", e.Department, e.Email, err)
			}

			if _, err := db.Exec(
				"INSERT INTO employees (first_name, last_name, email, phone, salary, department_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, now(), now())",
				e.FirstName, e.LastName, e.Email, e.Phone, e.Salary, deptID,
			); err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.Email, err)
			}
			fmt.Printf("Seeded employee: %s\n", e.Email)
		}

		fmt.Println("Seeding finished")
	},
}

func rowExists(db *sqlx.DB, query string, args ...any) bool {
	var exists int
	return db.QueryRow(query, args...).Scan(&exists) == nil
}
