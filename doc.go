/*
Package stctable decodes the proprietary .stc tabular binary format used
by the game's data distribution pipeline. Each .stc file encodes a single
relational table; the format is self-describing down to column types, but
table and column names live in an external, manually maintained mapping
(see the definitions package). All multi-byte integers are little-endian.

Data Structure Documentation

Table

A table file contains a fixed header, a sparse jump table and the packed
record data.

    Table layout:
    +--------+------------+-------------+
    | header | jump table | record data |
    +--------+------------+-------------+

    Header:
    +--------------+--------------------------+----------------+------------------+----------------------------------+
    | id (2 bytes) | last block len (2 bytes) | rows (2 bytes) | columns (1 byte) | column types (1 byte per column) |
    +--------------+--------------------------+----------------+------------------+----------------------------------+

The last block length records the size of the final 64KiB chunk of the
source archive. It is informational and never consulted while decoding.

Jump table

The jump table holds one entry per 100th record (ordinals 0, 100, 200, ...)
and always at least the entry for record 0. Its length is not stored; it is
derived from the row count as max(1, ceil(rows/100)).

    Jump entry:
    +---------------------+------------------+
    | record id (4 bytes) | offset (4 bytes) |
    +---------------------+------------------+

Record ids are the signed 32-bit ordinals of the anchored records; offsets
are relative to the start of the record data.

Record data

A record is one cell per column, in column-type order. Fixed-width cells
hold the raw little-endian value:

    code  type  width       code  type  width
       1    i8      1          6   u32      4
       2    u8      1          7   i64      8
       3   i16      2          8   u64      8
       4   u16      2          9   f32      4
       5   i32      4         10   f64      8

Code 11 is the variable-width string cell:

    String cell:
    +---------------------+------------------+------------------+
    | ascii flag (1 byte) | length (2 bytes) | length raw bytes |
    +---------------------+------------------+------------------+

The length counts bytes, not characters. The ascii flag is a producer hint
and is carried through verbatim; the bytes are decoded as UTF-8 either way.
*/
package stctable
