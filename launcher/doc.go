// Package launcher is a reference host for mode tables.
//
// It drives a table through its slots the way a launcher does: it owns the
// linear memory that transferred strings are written into, frees each
// string after reading it, resolves icon names through an IconStore and
// feeds compiled patterns to TokenMatch.
//
//	l, err := launcher.Open(ctx, table)
//	if err != nil {
//		return err
//	}
//	defer l.Close(ctx)
//
//	lines, _ := l.Filter("fire")
//	for _, line := range lines {
//		row, _, _ := l.Entry(line)
//		fmt.Println(row.Text)
//	}
//
// Calls into one Launcher are serialized.
package launcher
