// Package multiout routes the key/value records of a task attempt to many
// output destinations whose names are derived from the records themselves.
//
// A MultiplexingWriter opens the writer for a destination the first time a
// record is routed to it, reuses it for every later record with the same
// destination, and closes all of them when the attempt finishes:
//
//	format := multiout.NewOutputFormat[string, string](
//		textout.NewWriterFactory[string, string](),
//		multiout.WithDestinationLeaf(multiout.KeyAsDirectory[string, string]),
//	)
//
//	w, err := format.GetWriter(taskCtx)
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//
//	for _, r := range records {
//		if err := w.Write(r.Key, r.Value); err != nil {
//			return err
//		}
//	}
//
// Destination identifiers are slash-separated paths relative to the attempt's
// work path (task.Committer.WorkPath). They are unique per MultiplexingWriter
// only; keeping two attempts from writing the same physical file is the job of
// the committer, and routing the same key to a single attempt is the job of
// whatever partitions the input.
package multiout
