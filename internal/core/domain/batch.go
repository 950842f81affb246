package domain

// ArchiveBatch is one chapter of the archive: a part label and its questions.
// It is the unit of import and export.
type ArchiveBatch struct {
	// Part is the chapter label.
	Part string `json:"part"`

	// Questions are the records in source order.
	Questions []QuestionRecord `json:"questions"`
}

// CountQuestions returns the total number of records across batches.
func CountQuestions(batches []ArchiveBatch) int {
	n := 0
	for _, b := range batches {
		n += len(b.Questions)
	}
	return n
}
