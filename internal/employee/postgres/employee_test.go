package postgres

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/frahmantamala/employee-management/internal"
	departmentDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/department"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/employee"
)

func TestEmployeeRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Repository Suite")
}

var _ = Describe("EmployeeRepository", func() {
	var (
		db   *gorm.DB
		repo employee.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&departmentDatamodel.Department{}, &employeeDatamodel.Employee{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewEmployeeRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	newEmployee := func(email string) *employeeDatamodel.Employee {
		return &employeeDatamodel.Employee{
			FirstName: "Alya",
			LastName:  "Putri",
			Email:     email,
			Salary:    8500,
		}
	}

	createDepartment := func(name string) *departmentDatamodel.Department {
		dept := &departmentDatamodel.Department{Name: name}
		Expect(db.Create(dept).Error).To(Succeed())
		return dept
	}

	Describe("Create", func() {
		It("should create an employee and assign an ID", func() {
			row := newEmployee("alya@mail.com")
			Expect(repo.Create(row)).To(Succeed())
			Expect(row.ID).To(BeNumerically(">", 0))
		})

		It("should translate a duplicate email to a conflict", func() {
			Expect(repo.Create(newEmployee("alya@mail.com"))).To(Succeed())

			err := repo.Create(newEmployee("alya@mail.com"))
			Expect(err).To(Equal(apperrors.ErrDuplicateEmail))
		})
	})

	Describe("GetByID", func() {
		It("should retrieve a created employee", func() {
			row := newEmployee("alya@mail.com")
			Expect(repo.Create(row)).To(Succeed())

			got, err := repo.GetByID(row.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Email).To(Equal("alya@mail.com"))
		})

		It("should return ErrEmployeeNotFound for a missing ID", func() {
			_, err := repo.GetByID(99999)
			Expect(err).To(Equal(apperrors.ErrEmployeeNotFound))
		})
	})

	Describe("GetByEmail", func() {
		It("should find the employee holding the email", func() {
			row := newEmployee("alya@mail.com")
			Expect(repo.Create(row)).To(Succeed())

			got, err := repo.GetByEmail("alya@mail.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(row.ID))
		})

		It("should return ErrEmployeeNotFound when no one holds it", func() {
			_, err := repo.GetByEmail("nobody@mail.com")
			Expect(err).To(Equal(apperrors.ErrEmployeeNotFound))
		})
	})

	Describe("GetByDepartmentID", func() {
		It("should return only that department's employees", func() {
			eng := createDepartment("Engineering")
			fin := createDepartment("Finance")

			a := newEmployee("a@mail.com")
			a.DepartmentID = &eng.ID
			b := newEmployee("b@mail.com")
			b.DepartmentID = &fin.ID
			Expect(repo.Create(a)).To(Succeed())
			Expect(repo.Create(b)).To(Succeed())

			rows, err := repo.GetByDepartmentID(eng.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Email).To(Equal("a@mail.com"))
		})
	})

	Describe("List", func() {
		var eng *departmentDatamodel.Department

		BeforeEach(func() {
			eng = createDepartment("Engineering")
			fin := createDepartment("Finance")

			seed := []struct {
				FirstName string
				Email     string
				Salary    float64
				DeptID    *int64
			}{
				{"Citra", "citra@mail.com", 6400, &eng.ID},
				{"Alya", "alya@mail.com", 8500, &eng.ID},
				{"Budi", "budi@mail.com", 7200, &fin.ID},
				{"Dimas", "dimas@mail.com", 9100, nil},
			}
			for _, s := range seed {
				row := &employeeDatamodel.Employee{
					FirstName:    s.FirstName,
					LastName:     "Test",
					Email:        s.Email,
					Salary:       s.Salary,
					DepartmentID: s.DeptID,
				}
				Expect(repo.Create(row)).To(Succeed())
			}
		})

		It("should count the full set while returning one page", func() {
			rows, total, err := repo.List("", "employees.id ASC", 2, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(4)))
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Email).To(Equal("citra@mail.com"))
		})

		It("should apply the offset", func() {
			rows, total, err := repo.List("", "employees.id ASC", 2, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(4)))
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Email).To(Equal("budi@mail.com"))
		})

		It("should order by the given clause", func() {
			rows, _, err := repo.List("", "employees.salary DESC", 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].Email).To(Equal("dimas@mail.com"))
			Expect(rows[len(rows)-1].Email).To(Equal("citra@mail.com"))
		})

		It("should filter by exact department name in SQL", func() {
			rows, total, err := repo.List("Engineering", "employees.first_name ASC", 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
			Expect(rows[0].Email).To(Equal("alya@mail.com"))
			Expect(rows[1].Email).To(Equal("citra@mail.com"))
		})

		It("should combine the department filter with the id ordering", func() {
			rows, total, err := repo.List("Engineering", "employees.id ASC", 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Email).To(Equal("citra@mail.com"))
			Expect(rows[1].Email).To(Equal("alya@mail.com"))
		})

		It("should return an empty set for a non-matching name", func() {
			rows, total, err := repo.List("Marketing", "employees.id ASC", 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(0)))
			Expect(rows).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		It("should persist a cleared department reference", func() {
			eng := createDepartment("Engineering")
			row := newEmployee("alya@mail.com")
			row.DepartmentID = &eng.ID
			Expect(repo.Create(row)).To(Succeed())

			row.DepartmentID = nil
			Expect(repo.Update(row)).To(Succeed())

			got, err := repo.GetByID(row.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.DepartmentID).To(BeNil())
		})

		It("should translate a duplicate email to a conflict", func() {
			Expect(repo.Create(newEmployee("alya@mail.com"))).To(Succeed())
			row := newEmployee("budi@mail.com")
			Expect(repo.Create(row)).To(Succeed())

			row.Email = "alya@mail.com"
			Expect(repo.Update(row)).To(Equal(apperrors.ErrDuplicateEmail))
		})
	})

	Describe("Delete", func() {
		It("should remove the employee", func() {
			row := newEmployee("alya@mail.com")
			Expect(repo.Create(row)).To(Succeed())

			Expect(repo.Delete(row.ID)).To(Succeed())

			_, err := repo.GetByID(row.ID)
			Expect(err).To(Equal(apperrors.ErrEmployeeNotFound))
		})

		It("should return ErrEmployeeNotFound for a missing ID", func() {
			Expect(repo.Delete(99999)).To(Equal(apperrors.ErrEmployeeNotFound))
		})
	})
})
