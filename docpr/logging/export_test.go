package logging

// NewSinkForTest exposes newSink for tests.
var NewSinkForTest = newSink
