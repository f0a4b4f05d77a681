package postgres_test

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/suite"
	"github.com/xy-planning-network/dbenum"
	"github.com/xy-planning-network/dbenum/postgres"
	"gorm.io/gorm"
)

type shipment struct {
	ID     uint
	Status string `gorm:"type:order_status;not null"`
}

// DBTestSuite runs against a live PostgreSQL database
// and is skipped unless DATABASE_TEST_URL or DATABASE_TEST_HOST is set.
type DBTestSuite struct {
	suite.Suite

	db *gorm.DB
}

func TestRunSuite(t *testing.T) {
	err := godotenv.Load("../.env")
	var pe *fs.PathError
	if err != nil && !errors.As(err, &pe) {
		t.Fatal(err)
	}

	if os.Getenv("DATABASE_TEST_URL") == "" && os.Getenv("DATABASE_TEST_HOST") == "" {
		t.Skip("no test database configured")
	}

	suite.Run(t, new(DBTestSuite))
}

func (suite *DBTestSuite) SetupSuite() {
	migrations := []postgres.Migration{
		postgres.EnumMigration(orderStatus),
		{Key: "002_shipments", Executor: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(new(shipment))
		}},
	}

	var err error
	suite.db, err = postgres.Connect(postgres.NewCxnConfig(dbenum.Testing), migrations, dbenum.Testing)
	suite.Require().NoError(err)
}

func (suite *DBTestSuite) TearDownTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE shipments").Error)
}

func (suite *DBTestSuite) TestWriteValid() {
	// Act
	err := suite.db.Create(&shipment{Status: "o'clock"}).Error

	// Assert
	suite.Require().NoError(err)

	var actual shipment
	suite.Require().NoError(suite.db.First(&actual).Error)
	suite.Require().Equal("o'clock", actual.Status)
}

func (suite *DBTestSuite) TestWriteInvalid() {
	// Act
	err := postgres.Translate(suite.db.Create(&shipment{Status: "lost"}).Error)

	// Assert
	suite.Require().ErrorIs(err, dbenum.ErrNotValid)
}

func (suite *DBTestSuite) TestMigrationIsIdempotent() {
	// Arrange
	m := postgres.EnumMigration(orderStatus)

	// Act
	err := suite.db.Transaction(m.Executor)

	// Assert
	suite.Require().NoError(err)
}

func (suite *DBTestSuite) TestAddValue() {
	// Arrange
	extended := dbenum.MustDefine("OrderStatus", append(orderStatus.Choices(),
		dbenum.Choice{Value: "returned", Label: "Returned"},
	)...)

	// Act
	err := postgres.MigrateUp(suite.db, []postgres.Migration{postgres.EnumMigration(extended)}, quietLogger())

	// Assert
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.Create(&shipment{Status: "returned"}).Error)

	var labels []string
	suite.Require().NoError(suite.db.Raw("SELECT unnest(enum_range(NULL::order_status))::text").Scan(&labels).Error)
	suite.Require().Equal(extended.Values(), labels)
}

func (suite *DBTestSuite) TestAddValueBeforeNewValue() {
	// Arrange
	suite.Require().NoError(suite.db.Exec(`CREATE TYPE "shelf_state" AS ENUM ('b')`).Error)
	def := dbenum.MustDefine("ShelfState",
		dbenum.Choice{Value: "a"},
		dbenum.Choice{Value: "c"},
		dbenum.Choice{Value: "b"},
	)

	// Act
	err := suite.db.Transaction(postgres.EnumMigration(def).Executor)

	// Assert
	suite.Require().NoError(err)

	var labels []string
	suite.Require().NoError(suite.db.Raw("SELECT unnest(enum_range(NULL::shelf_state))::text").Scan(&labels).Error)
	suite.Require().Equal([]string{"a", "c", "b"}, labels)
}
