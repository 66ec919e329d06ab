package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/burphist/burphist/pkg/query"
)

var (
	queryExpr   string
	queryOffset int
	queryLimit  int
	queryCount  bool
)

var queryCmd = &cobra.Command{
	Use:   "query <history.xml>",
	Short: "Run an expression over a history export",
	Long: `Query loads a history export and prints the entries matching an
expression. The expression sees one entry at a time with fields like
host, method, path, status, mime, secure and clean, e.g.:

  burphist query history.xml -e 'status >= 500 && host == "api.example.com"'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pred, err := query.Compile(queryExpr)
		if err != nil {
			return fmt.Errorf("compile expression: %w", err)
		}

		store, err := loadStore(cmd, args[0])
		if err != nil {
			return err
		}

		it := query.Run(cmd.Context(), store, pred, &query.Options{
			Offset: queryOffset,
			Limit:  queryLimit,
		})
		if queryCount {
			n := it.Count()
			if err := it.Err(); err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		}
		for {
			e, ok := it.Next()
			if !ok {
				break
			}
			status := "-"
			if e.Status != 0 {
				status = fmt.Sprintf("%d", e.Status)
			}
			fmt.Printf("%d\t%s\t%s\t%s\t%s\n", e.ID, e.Method, e.URL, status, e.MimeType)
		}
		return it.Err()
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryExpr, "expr", "e", "true", "match expression")
	queryCmd.Flags().IntVar(&queryOffset, "offset", 0, "skip this many matches")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 0, "cap the number of matches (0 = all)")
	queryCmd.Flags().BoolVar(&queryCount, "count", false, "print only the match count")
	rootCmd.AddCommand(queryCmd)
}
