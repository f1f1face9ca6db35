// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lazy provides lazy sequences in a synchronous and an asynchronous
// flavor, and the combinators that coordinate several of them at once.
//
// A sequence is a pure factory: invoking it performs no work and returns a
// fresh session, a cursor with exactly one pull operation.
//
// # Architecture
//
//   - Synchronous: [iter.Seq] is the sequence, [Session] the cursor.
//   - Asynchronous: [AsyncStream] is the sequence, [AsyncSession] the cursor. Poll never blocks; a pull that cannot resolve yet returns [code.hybscloud.com/iox.ErrWouldBlock] and is continued by the next Poll.
//   - Pending units: a [Future] settles exactly once and hands its outcome over a lock-free SPSC queue ([code.hybscloud.com/lfq]), stamped with a global completion order.
//   - Generators: [Generate] bodies are [code.hybscloud.com/kont] computations that perform [Yield] and [Await], evaluated one effect per pull.
//   - Single-pass: [SinglePass] wraps a session that cannot restart, such as the receiving end of [NewPipe] or [FromChan].
//
// # API Topologies
//
//   - Trampoline: [ChainRecDepthFirst], [ChainRecBreadthFirst] and their async forms expand Left seeds and emit every Right without growing the native stack per item.
//   - Poll engine: [TraverseWithIndex], [Traverse], [Sequence] pull every active source per round, overlapping their suspensions; [TraverseWithIndexSeq] and friends pull one source at a time.
//   - Merge: [FromFutures] and [FromFuturesIndexed] emit in completion order; [FromFuturesSeq] in declaration order.
//   - Transforms: [AsyncMap], [AsyncChain], [AsyncFilterMap], [AsyncCompact], [AsyncSeparate], [Wither], [Wilt] and the synchronous [Map], [Chain], [FilterMap], [Compact], [Separate].
//   - Expr-world: [GenerateExpr], [ExprYieldThen], [ExprAwaitBind], [ExprLoop].
//
// # Integration
//
//   - Stepping: call Poll from an event loop and retry on iox.ErrWouldBlock.
//   - Blocking: [Next], [Collect], [ForEach], [Future.Await] and [Run] wait past suspensions using adaptive backoff and give up when their context is done.
//   - Observability: [Trace] logs session lifecycles through log/slog.
//
// # Example
//
//	s := lazy.FromFutures(
//		lazy.After(30*time.Millisecond, "A"),
//		lazy.After(10*time.Millisecond, "B"),
//		lazy.After(20*time.Millisecond, "C"),
//	)
//	out, err := lazy.Collect(ctx, s) // [B C A]
package lazy
