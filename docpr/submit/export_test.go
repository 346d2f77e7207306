package submit

// CollectFilesForTest exposes collectFiles.
var CollectFilesForTest = collectFiles
