package service

import (
	"testing"

	"github.com/diegoclair/slack-attendance-bot/mocks"
	"go.uber.org/mock/gomock"
)

type allMocks struct {
	mockDataManager      *mocks.MockDataManager
	mockConversationRepo *mocks.MockConversationRepo
	mockSlackClient      *mocks.MockSlackClient
	mockChatCompleter    *mocks.MockChatCompleter
	mockTalkFinder       *mocks.MockTalkFinder
	mockDispatcher       *mocks.MockDispatcher
}

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	conversationRepo := mocks.NewMockConversationRepo(ctrl)
	dm.EXPECT().Conversation().Return(conversationRepo).AnyTimes()

	m = allMocks{
		mockDataManager:      dm,
		mockConversationRepo: conversationRepo,
		mockSlackClient:      mocks.NewMockSlackClient(ctrl),
		mockChatCompleter:    mocks.NewMockChatCompleter(ctrl),
		mockTalkFinder:       mocks.NewMockTalkFinder(ctrl),
		mockDispatcher:       mocks.NewMockDispatcher(ctrl),
	}

	return
}
