package model

// Package model defines the Deck domain structures shared by the store, the
// REST client and the UI: boards, stacks, cards, labels and users. JSON tags
// follow the Deck REST API v1.0 payloads so values decode straight from the
// server and bind directly to screens.
