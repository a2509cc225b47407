package models_test

import (
	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/test"
)

// Connecting with a DSN that already carries the foreign keys pragma must
// not append it a second time, that produces a DSN sqlite rejects.
func (suite *TestSuiteStandard) TestConnectPragmaInDSN() {
	dsn := test.TmpFile(suite.T()) + "?_pragma=foreign_keys(1)"
	suite.Require().Nil(models.Connect(dsn))

	err := models.DB.Create(&models.Account{Name: "Pragma in DSN"}).Error
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestResourceNotFoundFriendlyError() {
	var account models.Account
	err := models.DB.First(&account, "id = ?", uuid.New()).Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no account matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestClosedDatabaseGeneralError() {
	suite.CloseDB()

	err := models.DB.Create(&models.Account{Name: "After close"}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestTimestampsUTC() {
	account := suite.createTestAccount(models.Account{})

	var reloaded models.Account
	suite.Require().Nil(models.DB.First(&reloaded, "id = ?", account.ID).Error)

	suite.Assert().Equal("UTC", reloaded.CreatedAt.Location().String())
	suite.Assert().Equal("UTC", reloaded.UpdatedAt.Location().String())
}
