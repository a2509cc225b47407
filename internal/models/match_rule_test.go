package models_test

import (
	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestMatchRuleCategoryMustExist() {
	err := models.DB.Create(&models.MatchRule{
		Match:      "EDEKA*",
		CategoryID: uuid.New(),
	}).Error

	suite.Assert().NotNil(err)
}

func (suite *TestSuiteStandard) TestMatchRuleTrimsWhitespace() {
	matchRule := suite.createTestMatchRule(models.MatchRule{Match: " REWE* "})

	suite.Assert().Equal("REWE*", matchRule.Match)
}

func (suite *TestSuiteStandard) TestMatchRulesByPriority() {
	second := suite.createTestMatchRule(models.MatchRule{Match: "Amazon*", Priority: 20})
	first := suite.createTestMatchRule(models.MatchRule{Match: "EDEKA*", Priority: 10})

	rules, err := models.MatchRulesByPriority(models.DB)
	suite.Require().Nil(err)
	suite.Require().Len(rules, 2)
	suite.Assert().Equal(first.ID, rules[0].ID)
	suite.Assert().Equal(second.ID, rules[1].ID)
}
