package app

// MaxBufferedRounds bounds how far ahead of the local round submissions are held.
// Anything further out is dropped as noise.
const MaxBufferedRounds = 8
