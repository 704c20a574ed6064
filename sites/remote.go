package sites

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/newsparse"
)

// doJSON issues req and decodes the JSON response body into v.
func doJSON(ctx context.Context, r newsparse.Requester, req *newsparse.Request, v any) error {
	resp, err := r.Do(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL, err)
	}
	return nil
}
