package engine

// Version is the merge engine version recorded with journal entries.
// Bump it when merge results can change for the same input.
const Version = "0.1.0"
