package panel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/debnet/fallout/internal/errors"
	"github.com/debnet/fallout/internal/orchestrators/panel"
	"github.com/debnet/fallout/internal/repositories/uistate"
	uistatemock "github.com/debnet/fallout/internal/repositories/uistate/mock"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *uistatemock.MockRepository
	svc      panel.Service
	ctx      context.Context
	panels   []string
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = uistatemock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()
	s.panels = []string{"stats", "inventory", "effects"}

	svc, err := panel.NewOrchestrator(&panel.Config{StateRepo: s.mockRepo})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) getReturns(value string, err error) {
	call := s.mockRepo.EXPECT().
		Get(s.ctx, uistate.GetInput{Session: "abc", Key: panel.StateKey})
	if err != nil {
		call.Return(nil, err)
		return
	}
	call.Return(&uistate.GetOutput{Entry: &uistate.Entry{Session: "abc", Key: panel.StateKey, Value: value}}, nil)
}

func (s *OrchestratorTestSuite) TestActivatePanel() {
	s.mockRepo.EXPECT().
		Set(s.ctx, uistate.SetInput{Session: "abc", Key: panel.StateKey, Value: "inventory"}).
		Return(&uistate.SetOutput{}, nil)

	out, err := s.svc.ActivatePanel(s.ctx, &panel.ActivatePanelInput{Session: "abc", Panel: "inventory"})
	s.Require().NoError(err)
	s.Equal("inventory", out.Panel)
}

func (s *OrchestratorTestSuite) TestActivatePanel_Validation() {
	_, err := s.svc.ActivatePanel(s.ctx, &panel.ActivatePanelInput{Panel: "inventory"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.ActivatePanel(s.ctx, &panel.ActivatePanelInput{Session: "abc"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestActivatePanel_StoreFailure() {
	s.mockRepo.EXPECT().Set(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("redis down"))

	_, err := s.svc.ActivatePanel(s.ctx, &panel.ActivatePanelInput{Session: "abc", Panel: "stats"})
	s.Error(err)
	s.Contains(err.Error(), "failed to store active panel")
}

func (s *OrchestratorTestSuite) TestInitialPanel_Stored() {
	s.getReturns("effects", nil)

	out, err := s.svc.InitialPanel(s.ctx, &panel.InitialPanelInput{Session: "abc", Panels: s.panels})
	s.Require().NoError(err)
	s.Equal("effects", out.Panel)
	s.Equal(panel.SourceStored, out.Source)
}

func (s *OrchestratorTestSuite) TestInitialPanel_StoredPanelGone() {
	s.getReturns("quests", nil)

	out, err := s.svc.InitialPanel(s.ctx, &panel.InitialPanelInput{Session: "abc", Panels: s.panels})
	s.Require().NoError(err)
	s.Equal("stats", out.Panel)
	s.Equal(panel.SourceFirst, out.Source)
}

func (s *OrchestratorTestSuite) TestInitialPanel_NothingStored() {
	s.getReturns("", errors.NotFound("ui state activePanel not found"))

	out, err := s.svc.InitialPanel(s.ctx, &panel.InitialPanelInput{Session: "abc", Panels: s.panels})
	s.Require().NoError(err)
	s.Equal("stats", out.Panel)
	s.Equal(panel.SourceFirst, out.Source)
}

func (s *OrchestratorTestSuite) TestInitialPanel_StoreFailureFallsBack() {
	s.getReturns("", errors.Unavailable("redis down"))

	out, err := s.svc.InitialPanel(s.ctx, &panel.InitialPanelInput{Session: "abc", Panels: s.panels})
	s.Require().NoError(err)
	s.Equal("stats", out.Panel)
}

func (s *OrchestratorTestSuite) TestInitialPanel_NoPanels() {
	out, err := s.svc.InitialPanel(s.ctx, &panel.InitialPanelInput{Session: "abc"})
	s.Require().NoError(err)
	s.Empty(out.Panel)
	s.Equal(panel.SourceNone, out.Source)
}

func (s *OrchestratorTestSuite) TestInitialPanel_NoSession() {
	out, err := s.svc.InitialPanel(s.ctx, &panel.InitialPanelInput{Panels: s.panels})
	s.Require().NoError(err)
	s.Equal("stats", out.Panel)
	s.Equal(panel.SourceFirst, out.Source)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
