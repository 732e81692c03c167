package sse

import (
	"strings"
	"testing"
	"time"

	"github.com/yatishgautam00/spy-game-local/internal/model"
	"github.com/yatishgautam00/spy-game-local/internal/testutil"
)

func liveGame() *model.Game {
	return &model.Game{
		ID: "GAME12345678",
		Players: []model.Player{
			{UID: "u-1", Name: "Alice", Role: model.RoleSpy, Word: "cat", Active: true},
			{UID: "u-2", Name: "Bob", Role: model.RoleVillager, Word: "dog", Active: true},
			{UID: "u-3", Name: "Carol", Role: model.RoleVillager, Word: "dog", Active: true},
		},
		Stage:        model.StageVoting,
		Round:        1,
		Votes:        map[model.UserID]model.UserID{"u-2": "u-1"},
		SpyWord:      "cat",
		VillagerWord: "dog",
		Version:      3,
	}
}

func TestPublicStateHidesRolesAndWordsWhileLive(t *testing.T) {
	state := publicStateFor(liveGame())

	if state.SpyUID != "" || state.SpyWord != "" {
		t.Errorf("live game leaked spy identity: uid=%q word=%q", state.SpyUID, state.SpyWord)
	}
	if len(state.Players) != 3 {
		t.Fatalf("got %d players, want 3", len(state.Players))
	}
	if !state.Players[1].HasVoted {
		t.Error("u-2 should show as having voted")
	}
	if state.Players[0].HasVoted {
		t.Error("u-1 should not show as having voted")
	}
}

func TestPublicStateRevealsSpyOnceEnded(t *testing.T) {
	game := liveGame()
	game.Stage = model.StageEnded
	game.Winner = model.WinnerVillagers

	state := publicStateFor(game)

	if state.SpyUID != "u-1" {
		t.Errorf("SpyUID = %q, want u-1", state.SpyUID)
	}
	if state.SpyWord != "cat" {
		t.Errorf("SpyWord = %q, want cat", state.SpyWord)
	}
	if state.Winner != model.WinnerVillagers {
		t.Errorf("Winner = %q, want villagers", state.Winner)
	}
}

func TestBroadcaster_PublishReachesClients(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("GAME12345678")
	defer manager.RemoveHub("GAME12345678")

	client := NewClient(hub, "u-2")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	game := liveGame()
	events := []model.Event{
		{Type: model.EventVoteCast, GameID: game.ID, ActorID: "u-2"},
	}
	broadcaster.Publish(game, events)

	// First the state snapshot
	select {
	case msg := <-client.send:
		got := string(msg)
		if !strings.HasPrefix(got, "event: state\n") {
			t.Errorf("first message is not a state event: %q", got)
		}
		if strings.Contains(got, "\"dog\"") || strings.Contains(got, "villager_word") {
			t.Errorf("state snapshot leaked words: %q", got)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive state snapshot")
	}

	// Then the domain event
	select {
	case msg := <-client.send:
		got := string(msg)
		if !strings.HasPrefix(got, "event: vote_cast\n") {
			t.Errorf("second message is not the vote event: %q", got)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive vote event")
	}
}

func TestBroadcaster_NoHubIsNoOp(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	// No hub exists for this game; must not panic or create one
	broadcaster.Publish(liveGame(), nil)

	if manager.GetHub("GAME12345678") != nil {
		t.Error("publish created a hub for a game with no listeners")
	}
}
