package board

// Package board implements the operations behind the board screens: loading
// and creating boards, stacks and cards, moving cards between stacks with a
// local optimistic update that is rolled back when the server refuses, and
// the login/logout session lifecycle. Results are published through the
// global store so every screen observing it refreshes.
